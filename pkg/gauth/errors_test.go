package gauth

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_DocumentedStatuses(t *testing.T) {
	tests := []struct {
		op     Operation
		status int
		kind   Kind
	}{
		{CodeExchange, 400, KindPasswordMismatch},
		{CodeExchange, 404, KindNotFoundUserByEmail},
		{CodeExchange, 500, KindInternalServerError},

		{TokenExchange, 400, KindClientSecretMismatch},
		{TokenExchange, 401, KindTokenExpiredOrInvalid},
		{TokenExchange, 404, KindNotFoundServiceByClientID},
		{TokenExchange, 500, KindInternalServerError},

		{TokenRefresh, 401, KindTokenExpiredOrInvalid},
		{TokenRefresh, 404, KindNotFoundUserByToken},
		{TokenRefresh, 500, KindInternalServerError},

		{UserInfo, 401, KindTokenExpiredOrInvalid},
		{UserInfo, 404, KindNotFoundRegisteredService},
		{UserInfo, 500, KindInternalServerError},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%s_%d", test.op, test.status), func(t *testing.T) {
			err := Classify(test.op, test.status)
			require.NotNil(t, err)
			assert.Equal(t, test.kind, err.Kind)
			assert.Equal(t, kindMessages[test.kind], err.Message)
		})
	}
}

func TestClassify_UndocumentedStatusesAreUnknown(t *testing.T) {
	for _, op := range []Operation{CodeExchange, TokenExchange, TokenRefresh, UserInfo} {
		for _, status := range []int{200, 201, 204, 301, 403, 418, 502, 503} {
			err := Classify(op, status)
			require.NotNil(t, err)
			assert.Equal(t, KindUnknown, err.Kind, "op %s status %d", op, status)
			assert.NotEmpty(t, err.Message)
		}
	}

	// 400 is only in some tables.
	assert.Equal(t, KindUnknown, Classify(TokenRefresh, 400).Kind)
	assert.Equal(t, KindUnknown, Classify(UserInfo, 400).Kind)
}

func TestClassify_NeverPanicsOnArbitraryInput(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = Classify(Operation(42), -1)
		_ = Classify(CodeExchange, 0)
		_ = Classify(Operation(-3), 999)
	})
}

func TestIsKind(t *testing.T) {
	t.Run("matches wrapped domain errors", func(t *testing.T) {
		err := fmt.Errorf("login failed: %w", Classify(TokenExchange, 401))
		assert.True(t, IsKind(err, KindTokenExpiredOrInvalid))
		assert.False(t, IsKind(err, KindClientSecretMismatch))
	})

	t.Run("rejects foreign errors", func(t *testing.T) {
		assert.False(t, IsKind(errors.New("plain"), KindUnknown))
		assert.False(t, IsKind(nil, KindUnknown))
	})
}

func TestError_UnwrapExposesTransportCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := unknownError("request failed", cause)
	assert.ErrorIs(t, err, cause)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "TokenExpiredOrInvalid", KindTokenExpiredOrInvalid.String())
	assert.Equal(t, "Unknown", KindUnknown.String())
	assert.Equal(t, "Unknown", Kind(99).String())
}
