// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/vbomesh/internal/logger"
)

// CompileProgram compiles vertex and fragment shaders and links them into a
// program. name labels errors and log entries.
func CompileProgram(name, vertexSrc, fragmentSrc string) (uint32, error) {
	log := logger.Named("shader").With(zap.String("program", name))

	vert, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		log.Error("vertex shader failed to compile", zap.Error(err))
		return 0, fmt.Errorf("%s vertex shader: %w", name, err)
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		log.Error("fragment shader failed to compile", zap.Error(err))
		return 0, fmt.Errorf("%s fragment shader: %w", name, err)
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		log.Error("link failed", zap.String("log", msg))
		return 0, fmt.Errorf("%s link: %s", name, msg)
	}

	log.Debug("program linked", zap.Uint32("id", program))
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s", annotate(msg, source))
	}

	return shader, nil
}

// infoLog reads a shader or program info log.
func infoLog(id uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var n int32
	getiv(id, gl.INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return "(no info log)"
	}
	buf := make([]byte, n)
	getLog(id, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n ")
}

// Driver logs point at lines as "0:12(5)" (Mesa), "ERROR: 0:12:" (NVIDIA,
// Apple) or "0(12)" (AMD, Intel).
var logLine = regexp.MustCompile(`\b0[:(](\d+)`)

// annotate appends the offending source line to each info log line that
// references one.
func annotate(msg, source string) string {
	src := strings.Split(source, "\n")

	var b strings.Builder
	for i, line := range strings.Split(msg, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		m := logLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(src) {
			continue
		}
		fmt.Fprintf(&b, "\n    > %s", strings.TrimSpace(src[n-1]))
	}
	return b.String()
}

// MustGetUniform returns the uniform location for the given name.
// Panics if the uniform is not found or inactive.
func MustGetUniform(program uint32, name string) int32 {
	loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	if loc < 0 {
		panic(fmt.Sprintf("uniform %q not found in program %d", name, program))
	}
	return loc
}
