package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	assert.Equal(t, 3*time.Second, Duration("3s", time.Minute))
	assert.Equal(t, time.Minute, Duration("bogus", time.Minute))
	assert.Equal(t, time.Minute, Duration("", time.Minute))
	assert.Equal(t, time.Minute, Duration("-1s", time.Minute))
}

func TestRabbitMqURL(t *testing.T) {
	saved := ConfigInfo.RabbitMq
	defer func() { ConfigInfo.RabbitMq = saved }()

	ConfigInfo.RabbitMq.Addr = ""
	assert.Equal(t, "", RabbitMqURL())

	ConfigInfo.RabbitMq.Addr = "mq:5672"
	ConfigInfo.RabbitMq.Username = "u"
	ConfigInfo.RabbitMq.Password = "p"
	assert.Equal(t, "amqp://u:p@mq:5672/", RabbitMqURL())
}

func TestJwtSecretWarning(t *testing.T) {
	saved := ConfigInfo.Jwt
	defer func() { ConfigInfo.Jwt = saved }()
	hook := test.NewGlobal()
	defer hook.Reset()

	ConfigInfo.Jwt.Secret = "change-me"
	assert.True(t, WeakJwtSecret())
	checkJwtSecret()
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "jwt.secret")

	ConfigInfo.Jwt.Secret = "short"
	assert.True(t, WeakJwtSecret())

	hook.Reset()
	ConfigInfo.Jwt.Secret = "9f3c1a7e5b2d4c8a0e6f"
	assert.False(t, WeakJwtSecret())
	checkJwtSecret()
	assert.Nil(t, hook.LastEntry())
}
