// Package shader wraps GPU programs and binds per-object uniforms.
package shader

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/vortex/internal/engine/gpu"
	"github.com/Faultbox/vortex/internal/logger"
	"github.com/Faultbox/vortex/pkg/math"
)

var (
	// ErrCreateProgram is returned when the driver hands out program 0.
	ErrCreateProgram = errors.New("shader: could not create program")
	// ErrUniformNotFound is returned by AddUniform for names the linked
	// program does not expose.
	ErrUniformNotFound = errors.New("shader: uniform not found")
	// ErrUnknownUniform is returned by the setters for names that were
	// never added.
	ErrUnknownUniform = errors.New("shader: unknown uniform")
	// ErrUnsupportedTarget is returned by UpdateUniforms when the object
	// lacks the data the shader needs.
	ErrUnsupportedTarget = errors.New("shader: unsupported target")
	// ErrNotLinked is returned when uniforms are queried before Link.
	ErrNotLinked = errors.New("shader: program not linked")
)

// Program is one linked GPU program and its uniform locations.
type Program struct {
	drv      gpu.Driver
	log      *zap.Logger
	name     string
	id       uint32
	stages   []uint32
	uniforms map[string]int32
	linked   bool
}

// NewProgram creates an empty program.
func NewProgram(drv gpu.Driver, name string) (*Program, error) {
	id := drv.CreateProgram()
	if id == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCreateProgram, name)
	}
	return &Program{
		drv:      drv,
		log:      logger.Named("shader").With(zap.String("program", name)),
		name:     name,
		id:       id,
		uniforms: make(map[string]int32),
	}, nil
}

// AddStage compiles src for stage and attaches it.
func (p *Program) AddStage(stage gpu.ShaderStage, src string) error {
	sh, err := p.drv.CompileShader(stage, src)
	if err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	p.drv.AttachShader(p.id, sh)
	p.stages = append(p.stages, sh)
	return nil
}

func (p *Program) AddVertexShader(src string) error {
	return p.AddStage(gpu.StageVertex, src)
}

func (p *Program) AddGeometryShader(src string) error {
	return p.AddStage(gpu.StageGeometry, src)
}

func (p *Program) AddTessControlShader(src string) error {
	return p.AddStage(gpu.StageTessControl, src)
}

func (p *Program) AddTessEvaluationShader(src string) error {
	return p.AddStage(gpu.StageTessEvaluation, src)
}

func (p *Program) AddFragmentShader(src string) error {
	return p.AddStage(gpu.StageFragment, src)
}

// Link links and validates the program. The stage objects are released
// afterwards either way.
func (p *Program) Link() error {
	defer p.releaseStages()

	if err := p.drv.LinkProgram(p.id); err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	if err := p.drv.ValidateProgram(p.id); err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	p.linked = true
	p.log.Debug("program linked", zap.Uint32("id", p.id))
	return nil
}

func (p *Program) releaseStages() {
	for _, sh := range p.stages {
		p.drv.DeleteShader(sh)
	}
	p.stages = nil
}

// AddUniform looks up and stores the location of name.
func (p *Program) AddUniform(name string) error {
	if !p.linked {
		return fmt.Errorf("%w: %s", ErrNotLinked, p.name)
	}
	loc := p.drv.UniformLocation(p.id, name)
	if loc < 0 {
		return fmt.Errorf("%w: %q in %s", ErrUniformNotFound, name, p.name)
	}
	p.uniforms[name] = loc
	return nil
}

// AddUniforms adds every name and reports all failures together.
func (p *Program) AddUniforms(names ...string) error {
	var err error
	for _, n := range names {
		err = multierr.Append(err, p.AddUniform(n))
	}
	return err
}

// BindFragDataLocation binds a fragment output to a colour number. It must
// be called before Link to take effect.
func (p *Program) BindFragDataLocation(name string, color uint32) {
	p.drv.BindFragDataLocation(p.id, color, name)
}

func (p *Program) location(name string) (int32, error) {
	loc, ok := p.uniforms[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q in %s", ErrUnknownUniform, name, p.name)
	}
	return loc, nil
}

func (p *Program) SetInt(name string, v int32) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	p.drv.Uniform1i(loc, v)
	return nil
}

func (p *Program) SetFloat(name string, v float32) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	p.drv.Uniform1f(loc, v)
	return nil
}

func (p *Program) SetVec2(name string, v math.Vec2) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	p.drv.Uniform2f(loc, v.X, v.Y)
	return nil
}

func (p *Program) SetVec3(name string, v math.Vec3) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	p.drv.Uniform3f(loc, v.X, v.Y, v.Z)
	return nil
}

// SetQuat uploads q as a vec4.
func (p *Program) SetQuat(name string, q math.Quat) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	p.drv.Uniform4f(loc, q.X, q.Y, q.Z, q.W)
	return nil
}

// SetMat4 uploads m. Matrices are stored row-major and sent with
// transpose set.
func (p *Program) SetMat4(name string, m math.Mat4) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	p.drv.UniformMatrix4(loc, true, m.Float32s())
	return nil
}

// Bind makes the program current.
func (p *Program) Bind() {
	p.drv.UseProgram(p.id)
}

// Delete releases the program. It is safe to call twice.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	p.releaseStages()
	p.drv.DeleteProgram(p.id)
	p.log.Debug("program deleted", zap.Uint32("id", p.id))
	p.id = 0
	p.linked = false
}

func (p *Program) ID() uint32    { return p.id }
func (p *Program) Name() string  { return p.name }
func (p *Program) Linked() bool  { return p.linked }
func (p *Program) Uniforms() int { return len(p.uniforms) }
