package game

import (
	"fmt"
	"strings"

	"shadowcaster/internal/logger"
	"shadowcaster/internal/profiling"
	"shadowcaster/internal/render"
)

// DebugOverlay periodically logs a one-line summary of renderer state.
type DebugOverlay struct {
	log      logger.Logger
	interval float64
	enabled  bool

	elapsed float64
	frames  int
}

func NewDebugOverlay(log logger.Logger, enabled bool, interval float64) *DebugOverlay {
	return &DebugOverlay{log: log, enabled: enabled, interval: interval}
}

func (o *DebugOverlay) Toggle() {
	o.enabled = !o.enabled
	o.elapsed, o.frames = 0, 0
}

func (o *DebugOverlay) Enabled() bool {
	return o.enabled
}

// Update counts a frame of dt seconds. Once per interval it logs and returns
// the summary line.
func (o *DebugOverlay) Update(in render.Inspector, dt float64) (string, bool) {
	if !o.enabled {
		return "", false
	}
	o.elapsed += dt
	o.frames++
	if o.elapsed < o.interval {
		return "", false
	}
	line := summary(in, float64(o.frames)/o.elapsed)
	o.elapsed, o.frames = 0, 0
	o.log.Infof("%s", line)
	return line, true
}

func summary(in render.Inspector, fps float64) string {
	frame := in.LastFrame()
	var b strings.Builder
	fmt.Fprintf(&b, "fps=%.0f camera=%s lights=%d simple/%d cube models=%d draws=%d+%d switches=%d",
		fps, in.ActiveCameraID(), len(frame.Lights.Simple), len(frame.Lights.Cube),
		len(in.ModelIDs()), frame.ShadowDraws, frame.DrawCalls, frame.ProgramSwitches)
	if top := profiling.TopN(3); top != "" {
		fmt.Fprintf(&b, " top=[%s]", top)
	}
	if frame.Err != nil {
		b.WriteString(" err=yes")
	}
	return b.String()
}
