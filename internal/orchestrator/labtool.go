// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrator

import (
	"errors"
	"fmt"
)

// LabTool names a multi-document synthesis task.
type LabTool string

const (
	SemanticWeaver     LabTool = "Semantic Weaver"
	ConflictResolver   LabTool = "Conflict Resolver"
	SynthesisEngine    LabTool = "Synthesis Engine"
	CitationForecaster LabTool = "Citation Forecaster"
)

// LabTools lists the tools in display order.
var LabTools = []LabTool{SemanticWeaver, ConflictResolver, SynthesisEngine, CitationForecaster}

// ErrUnknownTool is returned for a tool name outside LabTools.
var ErrUnknownTool = errors.New("unknown lab tool")

// ParseLabTool returns the tool with the given display name.
func ParseLabTool(name string) (LabTool, error) {
	for _, t := range LabTools {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownTool)
}

// Valid reports whether t is one of LabTools.
func (t LabTool) Valid() bool {
	_, err := ParseLabTool(string(t))
	return err == nil
}
