package game

import (
	"fmt"
	"image"
	"image/color"

	"chosenoffset.com/tbrpg/internal/battle"
	"chosenoffset.com/tbrpg/internal/movement"
	"chosenoffset.com/tbrpg/internal/render"
	"chosenoffset.com/tbrpg/internal/text"
	"chosenoffset.com/tbrpg/internal/ui/gui"
	"chosenoffset.com/tbrpg/internal/world/tilefield"
)

// Draw submits the draw list of the last pass.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(ScreenClear)
	for _, call := range g.calls {
		tex, ok := g.textures.Get(call.Texture)
		if !ok {
			continue
		}
		g.renderer.DrawRegion(screen, tex, call)
	}
}

// buildDrawList appends the current frame's draw calls to calls.
func (g *Game) buildDrawList(calls []render.DrawCall) []render.DrawCall {
	if g.screen == ScreenBattle {
		return g.drawBattle(calls)
	}
	return g.drawMap(calls)
}

func (g *Game) drawMap(calls []render.DrawCall) []render.DrawCall {
	px, py := g.player.Position()
	offset := g.player.Offset()

	g.field.Visible(px, py, TilesLeft, TilesRight, TilesUp, TilesDown, func(dx, dy int, t tilefield.Terrain) {
		x := dx*movement.TileSize + PlayerX + offset.X
		y := dy*movement.TileSize + PlayerY + offset.Y
		calls = append(calls, render.DrawCall{
			Texture: render.TextureWorldMap,
			Src:     g.terrainSrc[t],
			Dst:     image.Rect(x, y, x+movement.TileSize, y+movement.TileSize),
		})
	})

	src, flip := g.player.Sprite(g.wizardOrigin, g.facing)
	calls = append(calls, render.DrawCall{
		Texture: render.TextureCharacters,
		Src:     src,
		Dst:     image.Rect(PlayerX, PlayerY, PlayerX+movement.TileSize, PlayerY+movement.TileSize),
		Flip:    flip,
	})

	if g.textBox.Open {
		l := g.text.LayoutAndReveal(g.textBox.Text, MapTextArea, g.textBox.Reveal.Count())
		calls = g.gui.TextBox(calls, l, MapTextArea, TextBoxFill, Ink)
	}
	return calls
}

func (g *Game) drawBattle(calls []render.DrawCall) []render.DrawCall {
	calls = g.gui.FilledBox(calls, image.Rect(0, 0, GameWidth, GameHeight), BattleFill)
	calls = g.gui.LineH(calls, BattleDividerH, gui.JunctionR, gui.JunctionL)
	calls = g.gui.LineV(calls, BattleDividerTop, gui.JunctionB, gui.JunctionT)
	calls = g.gui.LineV(calls, BattleDividerLow, gui.JunctionB, gui.JunctionT)

	calls = g.drawEnemies(calls)
	calls = g.drawPlayerPanel(calls)
	calls = g.drawActionMenu(calls)

	l := g.text.LayoutAndReveal(g.battle.Narration(), NarrationArea, g.narration.Count())
	return l.AppendDrawCalls(calls, Ink)
}

func (g *Game) drawEnemies(calls []render.DrawCall) []render.DrawCall {
	targeting := g.battle.Step() == battle.StepTarget
	for slot, hp := range g.battle.Roster() {
		if slot >= len(EnemySlots) {
			break
		}
		var tint color.RGBA
		switch {
		case targeting && slot == g.battle.Target():
			tint = Highlight
		case hp <= 0:
			tint = Faded
		}
		calls = append(calls, render.DrawCall{
			Texture: render.TextureCharacters,
			Src:     g.enemySrc[slot],
			Dst:     EnemySlots[slot],
			Tint:    tint,
		})
	}
	return calls
}

func (g *Game) drawPlayerPanel(calls []render.DrawCall) []render.DrawCall {
	x := g.wizardOrigin.X + g.facing.Side*movement.TileSize
	calls = append(calls, render.DrawCall{
		Texture: render.TextureCharacters,
		Src:     image.Rect(x, g.wizardOrigin.Y, x+movement.TileSize, g.wizardOrigin.Y+movement.TileSize),
		Dst:     PlayerPanelSprite,
	})

	hp, maxHP := g.battle.PlayerHP()
	l := g.text.LayoutAndReveal(fmt.Sprintf("HP: %d of %d", hp, maxHP), PlayerPanelHP, text.Unlimited)
	return l.AppendDrawCalls(calls, Ink)
}

func (g *Game) drawActionMenu(calls []render.DrawCall) []render.DrawCall {
	gw, gh := g.text.Atlas().GlyphSize()
	for i, a := range battle.Actions {
		tint := Ink
		if a == g.battle.Action() {
			tint = Highlight
		}
		name := a.String()
		origin := ActionMenuOrigin.Add(image.Pt(0, i*ActionMenuSpacing))
		area := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(len(name)*gw, gh))}
		l := g.text.LayoutAndReveal(name, area, text.Unlimited)
		calls = l.AppendDrawCalls(calls, tint)
	}
	return calls
}
