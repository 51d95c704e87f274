package logger_test

import (
	"testing"

	"catalog/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, logger.Production, logger.ParseEnvironment(" Production "))
	assert.Equal(t, logger.Testing, logger.ParseEnvironment("testing"))
	assert.Equal(t, logger.Development, logger.ParseEnvironment("staging"))
	assert.Equal(t, logger.Development, logger.ParseEnvironment(""))
}
