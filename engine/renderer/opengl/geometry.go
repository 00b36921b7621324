package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/spaghettifunk/kiki/engine/renderer/metadata"
)

type glBuffer struct {
	handle uint32
}

func (r *OpenGLRenderer) VertexStreamCreate(stream *metadata.VertexStream) error {
	if len(stream.Data) == 0 {
		return fmt.Errorf("vertex stream %s is empty", stream.Name)
	}
	var handle uint32
	gl.GenBuffers(1, &handle)
	gl.BindBuffer(gl.ARRAY_BUFFER, handle)
	gl.BufferData(gl.ARRAY_BUFFER, len(stream.Data)*4, gl.Ptr(stream.Data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := checkError("vertex upload"); err != nil {
		gl.DeleteBuffers(1, &handle)
		return err
	}
	stream.InternalData = &glBuffer{handle: handle}
	return nil
}

func (r *OpenGLRenderer) VertexStreamDestroy(stream *metadata.VertexStream) {
	b, ok := stream.InternalData.(*glBuffer)
	if !ok || b == nil {
		return
	}
	gl.DeleteBuffers(1, &b.handle)
	stream.InternalData = nil
}

func bindStream(stream *metadata.VertexStream, location uint32) {
	b, ok := stream.InternalData.(*glBuffer)
	if !ok || b == nil {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.handle)
	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointer(location, int32(stream.ComponentCount), gl.FLOAT, false, 0, gl.PtrOffset(0))
}
