package modules

import (
	"testing"

	"leaguestats/fetcher/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModule(t *testing.T) {
	gin.SetMode(gin.TestMode)

	module, err := NewModule(&ModuleDependencies{Pipeline: &pipeline.Pipeline{}})
	require.NoError(t, err)

	assert.NotNil(t, module.Router)
	assert.NotNil(t, module.MatchHandler)
}
