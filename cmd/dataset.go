package cmd

import (
	"context"
	"fmt"

	"github.com/glbter/fund-returns/config"
	"github.com/glbter/fund-returns/entities"
	"github.com/glbter/fund-returns/returns/repo/csv"
	"github.com/glbter/fund-returns/returns/repo/memory"
)

type FundRepo interface {
	GetFunds(ctx context.Context) (entities.Dataset, error)
}

func NewFundRepo(cfg *config.Config) FundRepo {
	if cfg.Dataset.Path != "" {
		return csv.NewFundRepo(cfg.Dataset.Path)
	}

	return memory.FundRepo{}
}

func LoadDataset(ctx context.Context, repo FundRepo) (entities.Dataset, error) {
	ds, err := repo.GetFunds(ctx)
	if err != nil {
		return entities.Dataset{}, fmt.Errorf("get funds: %w", err)
	}

	if err := ds.Validate(); err != nil {
		return entities.Dataset{}, fmt.Errorf("validate dataset: %w", err)
	}

	return ds, nil
}
