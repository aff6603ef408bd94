// Package rulesets loads GM-authored formula sets from YAML.
package rulesets

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
	"github.com/KirkDiggler/pokesheet/internal/formula"
)

//go:embed ptu.yaml
var defaultRuleset []byte

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("ruleset.schema.json", schemaJSON)

var builtin = mustParse(defaultRuleset)

func mustParse(data []byte) *entities.Ruleset {
	rs, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("embedded ruleset is invalid: %v", err))
	}
	return rs
}

// Default returns a copy of the embedded PTU ruleset
func Default() *entities.Ruleset {
	return builtin.Clone()
}

// Load reads and parses a ruleset file
func Load(path string) (*entities.Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset %s: %w", path, err)
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, apperr.Wrapf(err, "ruleset %s", path).WithMeta("path", path)
	}
	return rs, nil
}

// Parse decodes a YAML ruleset, checks it against the schema and compiles
// every formula.
func Parse(data []byte) (*entities.Ruleset, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperr.Validationf("ruleset is not valid YAML: %v", err)
	}

	// the validator expects encoding/json shaped values
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, apperr.Validationf("ruleset cannot be represented as JSON: %v", err)
	}
	var jsonDoc any
	if err := json.Unmarshal(raw, &jsonDoc); err != nil {
		return nil, apperr.Validationf("ruleset cannot be represented as JSON: %v", err)
	}
	if err := schema.Validate(jsonDoc); err != nil {
		return nil, apperr.Validationf("ruleset does not match schema: %v", err)
	}

	var rs entities.Ruleset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rs); err != nil {
		return nil, apperr.Validationf("ruleset could not be decoded: %v", err)
	}

	if err := Validate(&rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Validate compiles every formula of rs
func Validate(rs *entities.Ruleset) error {
	if rs == nil {
		return apperr.InvalidArgument("ruleset is required")
	}
	if rs.Name == "" {
		return apperr.Validationf("ruleset name is required")
	}
	for _, kind := range []entities.CharacterKind{entities.CharacterKindPokemon, entities.CharacterKindTrainer} {
		formulas := rs.FormulasFor(kind)
		for _, stat := range entities.AllDerivedStats {
			template := formulas.Get(stat)
			if err := formula.Validate(template); err != nil {
				return apperr.WrapWithCode(err, apperr.CodeValidation,
					fmt.Sprintf("%s formula %s is invalid", kind, stat)).
					WithMeta("kind", string(kind)).
					WithMeta("stat", string(stat))
			}
		}
	}
	return nil
}
