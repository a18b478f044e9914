// SPDX-License-Identifier: GPL-2.0-or-later

package glbackend

import (
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gopxl/mainthread/v2"

	"dctr/pvr"
	"dctr/render"
)

// glTexture is one uploaded texture object. The textures map keeps it
// reachable under its handle until DestroyTexture removes it and
// deletes the GL object; it is not released by garbage collection
// while it is still registered there.
type glTexture struct {
	id uint32
}

var textures = map[render.TextureHandle]*glTexture{}

var nextHandle render.TextureHandle = 1

func glFilter(f pvr.FilterMode) int32 {
	if f == pvr.FilterBilinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func glWrap(w pvr.WrapMode) int32 {
	switch w {
	case pvr.WrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	case pvr.WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	default:
		return gl.REPEAT
	}
}

// CreateTexture uploads pixels (tightly packed RGBA8888) as a 2D
// texture and returns a handle DrawSurface's surfaces can reference.
func (b *Backend) CreateTexture(filter pvr.FilterMode, wrapU, wrapV pvr.WrapMode, mipmap bool, width, height int, pixels []byte) render.TextureHandle {
	t := &glTexture{}
	mainthread.Call(func() {
		gl.GenTextures(1, &t.id)
		gl.BindTexture(gl.TEXTURE_2D, t.id)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(filter))
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(filter))
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(wrapU))
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(wrapV))
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
		if mipmap {
			gl.GenerateMipmap(gl.TEXTURE_2D)
		}
	})
	runtime.SetFinalizer(t, (*glTexture).delete)

	handle := nextHandle
	nextHandle++
	textures[handle] = t
	return handle
}

// DestroyTexture releases a handle's GL texture object immediately,
// for the cache-dirty path where the decoded bytes changed.
func (b *Backend) DestroyTexture(handle render.TextureHandle) {
	t, ok := textures[handle]
	if !ok {
		return
	}
	delete(textures, handle)
	t.delete()
}

func (t *glTexture) delete() {
	id := t.id
	mainthread.CallNonBlock(func() {
		gl.DeleteTextures(1, &id)
	})
}

func (b *Backend) bindTexture(handle render.TextureHandle) {
	if handle == 0 {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return
	}
	t, ok := textures[handle]
	if !ok {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}
