package main

import (
	"sliders/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.ResultModel{},
		model.ExternalIdentityModel{},
		model.CoachDomainChallengeModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
