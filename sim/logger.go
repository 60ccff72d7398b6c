package sim

import (
	"fmt"

	"github.com/enzo-santos-ufpa/sd/sim/des"
)

// logLine formats one model log line: virtual time at fixed precision,
// actor, message.
func logLine(now float64, actor, message string) string {
	return fmt.Sprintf("%05.2f: %s: %s", now, actor, message)
}

// Logf writes one virtual-timestamped log line on behalf of actor, reading
// the clock of the process's environment. Suppressed unless logging was
// enabled at instantiation. Writing has no effect on scheduling.
func (in *Instance) Logf(p *des.Proc, actor, format string, args ...any) {
	if !in.logEnabled {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(in.logW, logLine(p.Env().Now(), actor, msg))
}
