package sieve

import (
	"io"
	"math"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const (
	FIRST_CANDIDATE = 2             // Smallest value the source emits.
	DEFAULT_BOUND   = 280           // Default inclusive upper bound.
	MAX_BOUND       = math.MaxInt32 // Largest bound a message can carry.
)

// Config of a sieve run.
type Config struct {
	Bound    int       // Inclusive upper bound of the candidates.
	Capacity int       // Pipe capacity in bytes, 0 for pipe.PIPE_SIZE.
	MaxPipes int       // Live pipe limit, 0 for no limit.
	Output   io.Writer // Destination of the announcements, nil to discard.
	Verbose  bool      // If set, logs the life of every unit and pipe.
}

// DefaultConfig returns the configuration of the classic run.
func DefaultConfig() (config Config) {
	config.Bound = DEFAULT_BOUND
	return
}

// Validate checks that the configuration can be run.
func (config *Config) Validate() (err error) {
	if config.Bound > MAX_BOUND {
		err = ErrBound(strconv.Itoa(config.Bound))
	}
	return
}

// ParseBound evaluates a bound expression, such as "280" or "20 * 14".
// DEFAULT_BOUND and MAX_BOUND are predeclared.
func ParseBound(expr string) (bound int, err error) {
	expr = strings.TrimSpace(expr)
	if len(expr) == 0 {
		err = ErrBound(expr)
		return
	}

	thread := starlark.Thread{Name: "bound"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"DEFAULT_BOUND": starlark.MakeInt(DEFAULT_BOUND),
		"MAX_BOUND":     starlark.MakeInt(MAX_BOUND),
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "bound", prog, pred)
	if err != nil {
		err = ErrBound(expr)
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrBound(expr)
		return
	}

	st_int64, ok := st_int.Int64()
	if !ok || st_int64 > MAX_BOUND || st_int64 < math.MinInt32 {
		err = ErrBound(expr)
		return
	}

	bound = int(st_int64)
	return
}
