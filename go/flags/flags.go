package flags

import (
	"fmt"
	"os"
	"reflect"

	"github.com/jessevdk/go-flags"
)

// Parse parses the command line and env into opts.
func Parse(opts any) error {
	return ParseArgs(opts, os.Args[1:])
}

// MustParse parses the command line and env into opts, panicking on error.
func MustParse(opts any) {
	if err := Parse(opts); err != nil {
		panic(fmt.Errorf("parsing args: %w", err))
	}
}

// ParseArgs parses the given args into opts. The args must not include the
// program name: everything in the list is treated as a flag or a positional
// argument.
func ParseArgs(opts any, args []string) error {
	initialize(opts)
	if _, err := flags.ParseArgs(opts, args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	return nil
}

// Allocates any nil pointer field of opts, so option groups can be declared
// as pointers and read back without nil checks.
func initialize(obj any) {
	v := reflect.Indirect(reflect.ValueOf(obj))
	for i := 0; i < v.NumField(); i++ {
		value := v.Field(i)
		if !v.Type().Field(i).IsExported() {
			continue
		}
		if value.Kind() != reflect.Ptr || value.Type().Elem().Kind() != reflect.Struct {
			continue
		}
		if value.IsNil() {
			value.Set(reflect.New(value.Type().Elem()))
		}
		initialize(value.Interface())
	}
}
