package opengl

import (
	"fmt"
	"os"
	"strings"

	"shadowcaster/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// NewShader reads the stage sources from disk and links them into a program.
func NewShader(name string, paths gpu.ShaderPaths) (*gpu.Shader, error) {
	vertexSource, err := os.ReadFile(paths.Vertex)
	if err != nil {
		return nil, fmt.Errorf("could not read vertex shader file: %w", err)
	}

	var geometrySource []byte
	if paths.Geometry != "" {
		geometrySource, err = os.ReadFile(paths.Geometry)
		if err != nil {
			return nil, fmt.Errorf("could not read geometry shader file: %w", err)
		}
	}

	fragmentSource, err := os.ReadFile(paths.Fragment)
	if err != nil {
		return nil, fmt.Errorf("could not read fragment shader file: %w", err)
	}

	return NewShaderFromSource(name, string(vertexSource), string(geometrySource), string(fragmentSource))
}

// NewShaderFromSource compiles and links a program. An empty geometry source
// skips the geometry stage.
func NewShaderFromSource(name, vertexSrc, geometrySrc, fragmentSrc string) (*gpu.Shader, error) {
	stages := []struct {
		kind   uint32
		source string
	}{
		{gl.VERTEX_SHADER, vertexSrc},
		{gl.GEOMETRY_SHADER, geometrySrc},
		{gl.FRAGMENT_SHADER, fragmentSrc},
	}

	var compiled []uint32
	defer func() {
		for _, s := range compiled {
			gl.DeleteShader(s)
		}
	}()

	for _, stage := range stages {
		if stage.source == "" {
			continue
		}
		s, err := compileShader(stage.source, stage.kind)
		if err != nil {
			return nil, fmt.Errorf("shader %q: %w", name, err)
		}
		compiled = append(compiled, s)
	}

	program := gl.CreateProgram()
	for _, s := range compiled {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return nil, fmt.Errorf("shader %q: failed to link program: %v", name, log)
	}

	return &gpu.Shader{ID: program, Name: name}, nil
}

// DeleteShader releases the program behind s.
func DeleteShader(s *gpu.Shader) {
	if s != nil && s.ID != 0 {
		gl.DeleteProgram(s.ID)
		s.ID = 0
	}
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile %s shader: %v", stageName(shaderType), log)
	}
	return shader, nil
}

func stageName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.GEOMETRY_SHADER:
		return "geometry"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	}
	return "unknown"
}

// ActiveUniforms lists the uniforms the linker kept in program. Uniforms a
// program declares but never reads are absent. Arrays appear once, named
// after their first element, with Size set to their length.
func ActiveUniforms(program uint32) []gpu.Uniform {
	var count, maxLength int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLength)
	if count == 0 || maxLength == 0 {
		return nil
	}

	uniforms := make([]gpu.Uniform, 0, count)
	buf := make([]uint8, maxLength)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var kind uint32
		gl.GetActiveUniform(program, i, maxLength, &length, &size, &kind, &buf[0])
		uniforms = append(uniforms, gpu.Uniform{Name: string(buf[:length]), Size: size})
	}
	return uniforms
}
