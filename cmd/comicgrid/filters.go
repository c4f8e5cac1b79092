package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"comic-grid/internal/algorithms"
	"comic-grid/internal/opencv"
)

// filterInfo is the listing entry for one registered filter.
type filterInfo struct {
	Name        string                     `yaml:"name"`
	Title       string                     `yaml:"title"`
	Description string                     `yaml:"description"`
	Defaults    map[string]interface{}     `yaml:"defaults"`
	Parameters  []algorithms.ParameterInfo `yaml:"parameters"`
}

// newRegistry wires the OpenCV-backed collaborators into the filter registry.
func newRegistry() *algorithms.Registry {
	return algorithms.NewRegistry(opencv.NewBilateralSmoother(), opencv.NewMorphology())
}

func describeFilters(registry *algorithms.Registry) []filterInfo {
	names := registry.Names()
	infos := make([]filterInfo, 0, len(names))
	for _, name := range names {
		algorithm, _ := registry.Get(name)
		infos = append(infos, filterInfo{
			Name:        name,
			Title:       algorithm.GetName(),
			Description: algorithm.GetDescription(),
			Defaults:    algorithm.GetDefaultParams(),
			Parameters:  algorithm.GetParameterInfo(),
		})
	}
	return infos
}

func newFiltersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the filters a variant can use, with their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(describeFilters(newRegistry())); err != nil {
				return fmt.Errorf("encode filter list: %w", err)
			}
			return enc.Close()
		},
	}
}
