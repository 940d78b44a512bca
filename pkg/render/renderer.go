// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-rigid/pkg/body"
	"github.com/opd-ai/go-rigid/pkg/logging"
)

// Renderer draws one frame of a simulation. Bodies are drawn between Clear and Present.
type Renderer interface {
	Clear()
	RenderBody(id uint64, name string, b *body.MovingBody)
	RenderBoundary(name string, b *body.Boundary)
	Present() error
}

// LogRenderer is a Renderer that writes every frame to a structured logger.
type LogRenderer struct {
	ctx    context.Context
	logger *logging.Logger
	bodies int
}

// NewLogRenderer creates a LogRenderer. ctx supplies the run ID and tick.
func NewLogRenderer(ctx context.Context, logger *logging.Logger) *LogRenderer {
	return &LogRenderer{ctx: ctx, logger: logger}
}

// SetContext replaces the context used for subsequent frames.
func (d *LogRenderer) SetContext(ctx context.Context) {
	d.ctx = ctx
}

// Clear implements Renderer.
func (d *LogRenderer) Clear() {
	d.bodies = 0
}

// RenderBody implements Renderer.
func (d *LogRenderer) RenderBody(id uint64, name string, b *body.MovingBody) {
	if b == nil {
		d.logger.Debug(d.ctx, "RenderBody called with nil body", "body_id", id)
		return
	}
	d.bodies++
	p := b.Placement()
	d.logger.Debug(d.ctx, "body",
		"body_id", id,
		"name", name,
		"shape", b.Shape().String(),
		"x", p.Position().X(),
		"y", p.Position().Y(),
		"angle", p.Angle(),
		"vx", b.Velocity().X(),
		"vy", b.Velocity().Y(),
		"spin", b.Spin(),
	)
}

// RenderBoundary implements Renderer.
func (d *LogRenderer) RenderBoundary(name string, b *body.Boundary) {
	if b == nil {
		return
	}
	d.logger.Debug(d.ctx, "boundary",
		"name", name,
		"shape", b.Shape().String(),
		"x", b.Placement().Position().X(),
		"y", b.Placement().Position().Y(),
	)
}

// Present implements Renderer.
func (d *LogRenderer) Present() error {
	d.logger.Debug(d.ctx, "frame", "bodies", d.bodies)
	return nil
}
