package rules

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/petbot/internal/errors"
)

// Load reads a YAML rule file. Keys missing from the file keep their canonical
// values; tables present in the file replace the canonical table entirely.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read rules file %s", path)
	}

	r, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid rules file %s", path)
	}
	return r, nil
}

// Parse decodes YAML rules on top of the canonical defaults and validates them
func Parse(data []byte) (*Rules, error) {
	r := Default()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode rules")
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Marshal encodes the rule set as YAML
func Marshal(r *Rules) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode rules")
	}
	return data, nil
}
