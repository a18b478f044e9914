// SPDX-License-Identifier: GPL-2.0-or-later

// Package glbackend is a concrete dctr/render.Backend over desktop
// OpenGL: it opens an SDL2 window, uploads tr.Context's vertex/index
// arrays once per frame, and issues one draw call per surface. It is
// the out-of-scope "render backend" the base spec names as an external
// collaborator — cmd/tatrace uses it to actually see a converted
// context on screen.
package glbackend

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gopxl/mainthread/v2"
	"github.com/veandco/go-sdl2/sdl"
)

// Window owns the SDL window and GL context a Backend draws into.
// Every GL call a Backend makes happens on mainthread, matching the
// teacher's window package's assumption that GL is single-threaded.
type Window struct {
	win *sdl.Window
	ctx sdl.GLContext
}

// Open creates an SDL window with a 4.6 core-profile desktop GL
// context and makes it current. Must be called from mainthread.Run's
// callback.
func Open(title string, width, height int, fullscreen bool) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, err
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 6)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_SHOWN)
	if fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	win, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width), int32(height), flags)
	if err != nil {
		return nil, err
	}

	glctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		return nil, err
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, err
	}

	return &Window{win: win, ctx: glctx}, nil
}

// Swap presents the frame drawn since the last Swap.
func (w *Window) Swap() {
	w.win.GLSwap()
}

// Close destroys the GL context and window.
func (w *Window) Close() {
	sdl.GLDeleteContext(w.ctx)
	w.win.Destroy()
	sdl.Quit()
}

// PollQuit reports whether the user requested the window be closed.
func PollQuit() bool {
	quit := false
	for {
		ev := sdl.PollEvent()
		if ev == nil {
			break
		}
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
				quit = true
			}
		}
	}
	return quit
}

// Run is mainthread.Run, named for cmd/tatrace's call site so it never
// has to import gopxl/mainthread directly.
func Run(fn func()) {
	mainthread.Run(fn)
}
