// SPDX-License-Identifier: GPL-2.0-or-later

package glbackend

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gopxl/mainthread/v2"

	"dctr/pvr"
	"dctr/render"
)

const vertexShaderSrc = `#version 410 core
layout(location = 0) in vec3 inXYZ;
layout(location = 1) in vec2 inUV;
layout(location = 2) in vec4 inColor;
layout(location = 3) in vec4 inOffsetColor;

uniform vec2 screenSize;

out vec2 fragUV;
out vec4 fragColor;
out vec4 fragOffsetColor;

void main() {
	vec2 ndc = vec2(inXYZ.x / screenSize.x, inXYZ.y / screenSize.y) * 2.0 - 1.0;
	gl_Position = vec4(ndc.x, -ndc.y, clamp(inXYZ.z, -1.0, 1.0), 1.0);
	fragUV = inUV;
	fragColor = inColor;
	fragOffsetColor = inOffsetColor;
}
` + "\x00"

const fragmentShaderSrc = `#version 410 core
in vec2 fragUV;
in vec4 fragColor;
in vec4 fragOffsetColor;

uniform sampler2D tex;
uniform bool useTexture;
uniform bool ignoreTextureAlpha;
uniform bool alphaTest;
uniform float alphaRef;

out vec4 outColor;

void main() {
	vec4 base = fragColor;
	if (useTexture) {
		vec4 texel = texture(tex, fragUV);
		if (ignoreTextureAlpha) {
			texel.a = 1.0;
		}
		base = base * texel;
	}
	base.rgb += fragOffsetColor.rgb;
	if (alphaTest && base.a < alphaRef) {
		discard;
	}
	outColor = base;
}
` + "\x00"

// Backend is a dctr/render.Backend that rasterizes a converted context
// with desktop OpenGL. One Backend is bound to one GL context; it is
// not safe for concurrent use, matching the source's assumption of a
// single render thread.
type Backend struct {
	prog uint32

	vao, vbo, ebo uint32

	uScreenSize         int32
	uTex                int32
	uUseTexture         int32
	uIgnoreTextureAlpha int32
	uAlphaTest          int32
	uAlphaRef           int32
}

// New compiles the draw shader and allocates the GL objects a Backend
// needs. Must be called on mainthread with a current GL context.
func New() (*Backend, error) {
	b := &Backend{}

	var err error
	mainthread.Call(func() {
		b.prog, err = newProgram(vertexShaderSrc, fragmentShaderSrc)
	})
	if err != nil {
		return nil, fmt.Errorf("glbackend: %w", err)
	}

	mainthread.Call(func() {
		gl.GenVertexArrays(1, &b.vao)
		gl.GenBuffers(1, &b.vbo)
		gl.GenBuffers(1, &b.ebo)

		b.uScreenSize = gl.GetUniformLocation(b.prog, gl.Str("screenSize\x00"))
		b.uTex = gl.GetUniformLocation(b.prog, gl.Str("tex\x00"))
		b.uUseTexture = gl.GetUniformLocation(b.prog, gl.Str("useTexture\x00"))
		b.uIgnoreTextureAlpha = gl.GetUniformLocation(b.prog, gl.Str("ignoreTextureAlpha\x00"))
		b.uAlphaTest = gl.GetUniformLocation(b.prog, gl.Str("alphaTest\x00"))
		b.uAlphaRef = gl.GetUniformLocation(b.prog, gl.Str("alphaRef\x00"))
	})

	return b, nil
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	compile := func(src string, kind uint32) (uint32, error) {
		shader := gl.CreateShader(kind)
		csrc, free := gl.Strs(src)
		defer free()
		length := int32(len(src) - 1)
		gl.ShaderSource(shader, 1, csrc, &length)
		gl.CompileShader(shader)

		var status int32
		gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
		if status == gl.FALSE {
			var logLen int32
			gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
			buf := make([]byte, logLen+1)
			gl.GetShaderInfoLog(shader, logLen, nil, &buf[0])
			return 0, fmt.Errorf("compile shader: %s", string(buf))
		}
		return shader, nil
	}

	vert, err := compile(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	frag, err := compile(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		buf := make([]byte, logLen+1)
		gl.GetProgramInfoLog(prog, logLen, nil, &buf[0])
		return 0, fmt.Errorf("link program: %s", string(buf))
	}
	return prog, nil
}

const vertexStride = 3*4 + 2*4 + 4 + 4

// BeginSurfaces uploads this frame's vertex and index arrays and binds
// the draw state every subsequent DrawSurface call shares.
func (b *Backend) BeginSurfaces(width, height int, verts []render.Vertex, numVerts int, indices []uint32, numIndices int) {
	mainthread.Call(func() {
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		gl.Enable(gl.DEPTH_TEST)

		gl.UseProgram(b.prog)
		gl.Uniform2f(b.uScreenSize, float32(width), float32(height))
		gl.Uniform1i(b.uTex, 0)

		gl.BindVertexArray(b.vao)

		gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
		if numVerts > 0 {
			gl.BufferData(gl.ARRAY_BUFFER, numVerts*vertexStride, gl.Ptr(verts[:numVerts]), gl.STREAM_DRAW)
		}

		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
		if numIndices > 0 {
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, numIndices*4, gl.Ptr(indices[:numIndices]), gl.STREAM_DRAW)
		}

		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointer(1, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(12))
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointer(2, 4, gl.UNSIGNED_BYTE, true, vertexStride, gl.PtrOffset(20))
		gl.EnableVertexAttribArray(2)
		gl.VertexAttribPointer(3, 4, gl.UNSIGNED_BYTE, true, vertexStride, gl.PtrOffset(24))
		gl.EnableVertexAttribArray(3)
	})
}

// DrawSurface issues one indexed draw call for s, applying its depth,
// cull, blend and texture state first.
func (b *Backend) DrawSurface(s render.Surface) {
	mainthread.Call(func() {
		p := s.Params

		if p.DepthWrite {
			gl.DepthMask(true)
		} else {
			gl.DepthMask(false)
		}
		gl.DepthFunc(glDepthFunc(p.DepthFunc))

		if p.Cull == pvr.CullNone {
			gl.Disable(gl.CULL_FACE)
		} else {
			gl.Enable(gl.CULL_FACE)
			gl.CullFace(glCullFace(p.Cull))
		}

		if p.SrcBlend == pvr.BlendNone && p.DstBlend == pvr.BlendNone {
			gl.Disable(gl.BLEND)
		} else {
			gl.Enable(gl.BLEND)
			gl.BlendFunc(glBlendFunc(p.SrcBlend), glBlendFunc(p.DstBlend))
		}

		gl.Uniform1i(b.uIgnoreTextureAlpha, boolToInt(p.IgnoreTextureAlpha))
		gl.Uniform1i(b.uAlphaTest, boolToInt(p.AlphaTest))
		gl.Uniform1f(b.uAlphaRef, float32(p.AlphaRef)/255.0)

		if p.Texture != 0 {
			gl.ActiveTexture(gl.TEXTURE0)
			b.bindTexture(p.Texture)
			gl.Uniform1i(b.uUseTexture, 1)
		} else {
			gl.Uniform1i(b.uUseTexture, 0)
		}

		gl.DrawElements(gl.TRIANGLES, int32(s.NumVerts), gl.UNSIGNED_INT,
			unsafe.Pointer(uintptr(s.FirstVert*4)))
	})
}

// EndSurfaces is a no-op beyond what BeginSurfaces/DrawSurface already
// flushed; it exists to round out the Backend interface and give a
// caller a place to hook frame-end bookkeeping (e.g. Window.Swap).
func (b *Backend) EndSurfaces() {}

func boolToInt(v bool) int32 {
	if v {
		return 1
	}
	return 0
}

func glDepthFunc(f pvr.DepthFunc) uint32 {
	switch f {
	case pvr.DepthNever:
		return gl.NEVER
	case pvr.DepthGreater:
		return gl.GREATER
	case pvr.DepthEqual:
		return gl.EQUAL
	case pvr.DepthGEqual:
		return gl.GEQUAL
	case pvr.DepthLess:
		return gl.LESS
	case pvr.DepthNEqual:
		return gl.NOTEQUAL
	case pvr.DepthLEqual:
		return gl.LEQUAL
	default:
		return gl.ALWAYS
	}
}

func glCullFace(f pvr.CullFace) uint32 {
	if f == pvr.CullFront {
		return gl.FRONT
	}
	return gl.BACK
}

func glBlendFunc(f pvr.BlendFunc) uint32 {
	switch f {
	case pvr.BlendZero:
		return gl.ZERO
	case pvr.BlendOne:
		return gl.ONE
	case pvr.BlendDstColor:
		return gl.DST_COLOR
	case pvr.BlendOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case pvr.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case pvr.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case pvr.BlendDstAlpha:
		return gl.DST_ALPHA
	case pvr.BlendOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case pvr.BlendSrcColor:
		return gl.SRC_COLOR
	case pvr.BlendOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	default:
		return gl.ONE
	}
}

var _ render.Backend = (*Backend)(nil)
