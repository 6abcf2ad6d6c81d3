package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/petbot/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "player not found",
			expected: "NOT_FOUND: player not found",
		},
		{
			name:     "aborted error",
			code:     errors.CodeAborted,
			message:  "transaction conflict",
			expected: "ABORTED: transaction conflict",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("player not found").
		WithMeta("chat_id", int64(-100)).
		WithMeta("player_id", int64(42))

	s.Equal(int64(-100), err.Meta["chat_id"])
	s.Equal(int64(42), err.Meta["player_id"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to load player")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to load player", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	baseErr := errors.NotFound("record not found").WithMeta("key", "pet:{1}:state:2")
	wrapped := errors.Wrapf(baseErr, "player %d missing", 2)

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("player 2 missing", wrapped.Message)
	s.Equal("pet:{1}:state:2", wrapped.Meta["key"])
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("redis: transaction failed")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeAborted, "too many conflicts")

	s.Equal(errors.CodeAborted, wrapped.Code)
	s.True(errors.IsAborted(wrapped))
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("a")
	err2 := errors.NotFound("b")
	err3 := errors.InvalidArgument("a")

	s.True(err1.Is(err2))
	s.False(err1.Is(err3))
	s.True(errors.Is(errors.Wrap(err1, "wrapped"), err2))
}

func (s *ErrorsTestSuite) TestGetters() {
	err := errors.FailedPrecondition("pet is dead").WithMeta("player_id", 7)
	wrapped := errors.Wrap(err, "feed rejected")
	stdErr := fmt.Errorf("standard error")

	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(wrapped))
	s.Equal(errors.CodeInternal, errors.GetCode(stdErr))
	s.Equal(errors.CodeOK, errors.GetCode(nil))

	s.Equal(7, errors.GetMeta(wrapped)["player_id"])
	s.Nil(errors.GetMeta(stdErr))

	s.Equal("feed rejected", errors.GetMessage(wrapped))
	s.Equal("standard error", errors.GetMessage(stdErr))
}

func (s *ErrorsTestSuite) TestRejectionClassification() {
	testCases := []struct {
		code      errors.Code
		rejection bool
		retryable bool
	}{
		{errors.CodeInvalidArgument, true, false},
		{errors.CodeNotFound, true, false},
		{errors.CodeResourceExhausted, true, false},
		{errors.CodeFailedPrecondition, true, false},
		{errors.CodeInternal, false, false},
		{errors.CodeDataLoss, false, false},
		{errors.CodeAborted, false, true},
		{errors.CodeUnavailable, false, true},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Equal(tc.rejection, tc.code.Rejection())
			s.Equal(tc.retryable, tc.code.Retryable())
			s.Equal(tc.rejection, errors.IsRejection(errors.New(tc.code, "x")))
		})
	}

	s.False(errors.IsRejection(nil))
	s.False(errors.IsRejection(fmt.Errorf("plain")))
}
