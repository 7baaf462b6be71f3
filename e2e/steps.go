package e2e

import (
	"github.com/cucumber/godog"

	"worldranks/e2e/steps/browse"
	"worldranks/e2e/steps/common"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	browse.RegisterSteps(ctx, tc)
}
