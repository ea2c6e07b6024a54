package overrides

import (
	"fmt"
	"strings"
)

// ParseArguments reads `--cv.name "Jane Doe" --cv.phone +15551234567` style
// pairs. A later key wins over an earlier one.
func ParseArguments(args []string) (map[string]string, error) {
	if len(args)%2 != 0 {
		return nil, &ArgumentError{Message: fmt.Sprintf(
			"There is a problem with the extra arguments (%s)! Each key should have a corresponding value.",
			strings.Join(args, ","))}
	}
	out := make(map[string]string, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key := args[i]
		if !strings.HasPrefix(key, "--") {
			return nil, &ArgumentError{Message: fmt.Sprintf("The key (%s) should start with double dashes!", key)}
		}
		out[strings.TrimPrefix(key, "--")] = args[i+1]
	}
	return out, nil
}

// ParseAssignments reads `cv.name=Jane Doe` assignments, as given to a
// repeated --override flag. Only the first "=" separates key and value.
func ParseAssignments(assignments []string) (map[string]string, error) {
	out := make(map[string]string, len(assignments))
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, &ArgumentError{Message: fmt.Sprintf("The override (%s) should be written as key=value!", a)}
		}
		out[strings.TrimSpace(key)] = value
	}
	return out, nil
}

// Merge combines override maps; later maps win.
func Merge(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
