// Package catalog holds the static lookup tables behind the allocator and the
// CPQ calculators, optionally overridden from a YAML file.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AngelCh415/atelier/internal/models"
)

// DefaultChannel se usa para cualquier canal ausente de la tabla.
var DefaultChannel = models.ChannelEfficiency{CostPerLead: 100, ConversionRate: 0.05, QualityScore: 0.5}

type Catalog struct {
	Channels       map[string]models.ChannelEfficiency
	Tiers          []models.Tier
	Customizations map[string]models.Customization
}

func Default() *Catalog {
	c := &Catalog{
		Channels: map[string]models.ChannelEfficiency{
			"Google Ads":        {CostPerLead: 45, ConversionRate: 0.12, QualityScore: 0.85},
			"LinkedIn Ads":      {CostPerLead: 85, ConversionRate: 0.18, QualityScore: 0.95},
			"Facebook Ads":      {CostPerLead: 35, ConversionRate: 0.08, QualityScore: 0.70},
			"Instagram Ads":     {CostPerLead: 40, ConversionRate: 0.07, QualityScore: 0.75},
			"SEO":               {CostPerLead: 25, ConversionRate: 0.15, QualityScore: 0.90},
			"Content Marketing": {CostPerLead: 30, ConversionRate: 0.10, QualityScore: 0.88},
			"Email Marketing":   {CostPerLead: 15, ConversionRate: 0.20, QualityScore: 0.80},
			"Referrals":         {CostPerLead: 20, ConversionRate: 0.35, QualityScore: 0.98},
			"Trade Shows":       {CostPerLead: 150, ConversionRate: 0.22, QualityScore: 0.92},
			"Print Media":       {CostPerLead: 120, ConversionRate: 0.04, QualityScore: 0.60},
		},
		Tiers: []models.Tier{
			{
				ID: "esencial", Name: "Esencial", BasePrice: 45000,
				Features: []string{"Anteproyecto", "Planos arquitectónicos", "2 revisiones"},
			},
			{
				ID: "profesional", Name: "Profesional", BasePrice: 95000,
				Features: []string{"Proyecto ejecutivo", "Renders 3D", "Gestión de permisos", "5 revisiones"},
			},
			{
				ID: "integral", Name: "Integral", BasePrice: 180000,
				Features: []string{"Proyecto ejecutivo", "Modelo BIM", "Supervisión de obra", "Interiorismo", "Revisiones ilimitadas"},
			},
		},
		Customizations: map[string]models.Customization{},
	}
	for _, cu := range []models.Customization{
		{ID: "render-3d", Name: "Renders 3D adicionales", Cost: 12000},
		{ID: "bim-model", Name: "Modelo BIM", Cost: 25000},
		{ID: "permits", Name: "Gestión de permisos", Cost: 15000},
		{ID: "interior-design", Name: "Diseño de interiores", Cost: 30000},
		{ID: "landscape", Name: "Paisajismo", Cost: 18000},
		{ID: "sustainability", Name: "Certificación sustentable", Cost: 22000},
	} {
		c.Customizations[cu.ID] = cu
	}
	return c
}

// Channel devuelve el registro del canal o DefaultChannel.
func (c *Catalog) Channel(name string) models.ChannelEfficiency {
	if e, ok := c.Channels[name]; ok {
		return e
	}
	return DefaultChannel
}

func (c *Catalog) Tier(id string) (models.Tier, bool) {
	for _, t := range c.Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return models.Tier{}, false
}

func (c *Catalog) CustomizationCost(id string) float64 {
	return c.Customizations[id].Cost
}

type fileFormat struct {
	Channels       map[string]models.ChannelEfficiency `yaml:"channels"`
	Tiers          []models.Tier                       `yaml:"tiers"`
	Customizations []models.Customization              `yaml:"customizations"`
}

// Load parte de Default y aplica encima el YAML en path. Path vacío = defaults.
func Load(path string) (*Catalog, error) {
	c := Default()
	if strings.TrimSpace(path) == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	for name, e := range f.Channels {
		c.Channels[name] = e
	}
	for _, t := range f.Tiers {
		c.upsertTier(t)
	}
	for _, cu := range f.Customizations {
		c.Customizations[cu.ID] = cu
	}
	return c, nil
}

func (c *Catalog) upsertTier(t models.Tier) {
	for i := range c.Tiers {
		if c.Tiers[i].ID == t.ID {
			c.Tiers[i] = t
			return
		}
	}
	c.Tiers = append(c.Tiers, t)
}

func (f fileFormat) validate() error {
	var errs []error
	for name, e := range f.Channels {
		if e.CostPerLead <= 0 {
			errs = append(errs, fmt.Errorf("channel %q: cost_per_lead must be > 0", name))
		}
		if e.ConversionRate < 0 || e.ConversionRate > 1 {
			errs = append(errs, fmt.Errorf("channel %q: conversion_rate out of [0,1]", name))
		}
		if e.QualityScore < 0 || e.QualityScore > 1 {
			errs = append(errs, fmt.Errorf("channel %q: quality_score out of [0,1]", name))
		}
	}
	for _, t := range f.Tiers {
		if t.ID == "" {
			errs = append(errs, errors.New("tier without id"))
		}
		if t.BasePrice < 0 {
			errs = append(errs, fmt.Errorf("tier %q: negative base_price", t.ID))
		}
	}
	for _, cu := range f.Customizations {
		if cu.ID == "" {
			errs = append(errs, errors.New("customization without id"))
		}
		if cu.Cost < 0 {
			errs = append(errs, fmt.Errorf("customization %q: negative cost", cu.ID))
		}
	}
	return errors.Join(errs...)
}
