package cmd

import (
	"fmt"

	"github.com/lepinkainen/keepers/internal/cmdutil"
	"github.com/lepinkainen/keepers/internal/config"
	"github.com/lepinkainen/keepers/internal/season"
	"gopkg.in/yaml.v3"
)

// SeasonsCmd prints the season orders the aggregator and the fee resolver use
type SeasonsCmd struct{}

type orderView struct {
	Version int      `yaml:"version"`
	Unknown string   `yaml:"unknown"`
	Labels  []string `yaml:"labels"`
}

type seasonsView struct {
	Stats     orderView `yaml:"stats"`
	Transfers orderView `yaml:"transfers"`
}

func newOrderView(o season.Order) orderView {
	return orderView{Version: o.Version, Unknown: string(o.Unknown), Labels: o.Labels}
}

func (s *SeasonsCmd) Run(env *cmdutil.Env) error {
	stats, err := config.StatsOrder()
	if err != nil {
		return err
	}
	transfers, err := config.TransferOrder()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(env.Out)
	enc.SetIndent(2)
	if err := enc.Encode(seasonsView{Stats: newOrderView(stats), Transfers: newOrderView(transfers)}); err != nil {
		return fmt.Errorf("failed to encode season orders: %w", err)
	}
	return enc.Close()
}
