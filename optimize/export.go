package optimize

import (
	"encoding/json"
	"os"
)

// Export writes the result slice to a JSON file, best first.
func Export(path string, results []Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
