package services

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gitfit/gitfit-backend/internal/types"
)

//go:embed voicepack.yaml
var defaultVoicepack []byte

// DefaultPersona is used when a user's coaching context has no persona set.
const DefaultPersona = "alice"

type personaLines struct {
	Name        string                       `yaml:"name"`
	Description string                       `yaml:"description"`
	Lines       map[string]map[string]string `yaml:"lines"`
}

type voicepackFile struct {
	Personas map[string]personaLines `yaml:"personas"`
}

// Voicepack selects coach voice lines by (zone, phase, persona). Lines are
// text only; rendering them to audio happens elsewhere.
type Voicepack struct {
	personas map[string]personaLines
}

// LoadVoicepack parses the embedded pack, or the file at path when non-empty.
func LoadVoicepack(path string) (*Voicepack, error) {
	raw := defaultVoicepack
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read voicepack: %w", err)
		}
		raw = b
	}

	var file voicepackFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse voicepack: %w", err)
	}
	if len(file.Personas) == 0 {
		return nil, fmt.Errorf("voicepack has no personas")
	}
	if _, ok := file.Personas[DefaultPersona]; !ok {
		return nil, fmt.Errorf("voicepack missing default persona %q", DefaultPersona)
	}

	return &Voicepack{personas: file.Personas}, nil
}

// HasPersona reports whether the pack carries lines for the given persona.
func (vp *Voicepack) HasPersona(persona string) bool {
	_, ok := vp.personas[persona]
	return ok
}

// Line returns the voice line for (zone, phase, persona). Unknown personas
// fall back to the default persona; a missing (zone, phase) cell returns "".
func (vp *Voicepack) Line(zone, phase, persona string) string {
	p, ok := vp.personas[persona]
	if !ok {
		p = vp.personas[DefaultPersona]
	}
	byPhase, ok := p.Lines[zone]
	if !ok {
		return ""
	}
	return byPhase[phase]
}

// RedWorkingSetLine is the voice line spoken alongside a red-zone directive.
// Voice lines are gated to working sets; other phases stay silent.
func (vp *Voicepack) RedWorkingSetLine(persona string) string {
	return vp.Line(types.StrainZoneRed, types.PhaseWorkingSets, persona)
}
