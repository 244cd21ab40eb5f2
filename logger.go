package orm

import (
	"fmt"
	"time"
)

// log prints the statement, its arguments and how long it took at debug
// level. Nothing is printed if the Model has no logger.
func (m Model[T, PT]) log(sql string, args []interface{}, elapsed time.Duration) {
	if m.logger == nil {
		return
	}
	var prefix string
	if elapsed > 0 {
		prefix = fmt.Sprintf("(%.2f ms) ", float64(elapsed)/float64(time.Millisecond))
	}
	if len(args) == 0 {
		m.logger.Debug(prefix + sql)
		return
	}
	m.logger.Debug(prefix+sql, args)
}
