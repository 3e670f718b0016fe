package rules

import "errors"

var (
	ErrRuleNotFound    = errors.New("rules: rule not found")
	ErrAccessDenied    = errors.New("rules: access denied")
	ErrDuplicateRule   = errors.New("rules: active rule already exists for this slot")
	ErrRuleCanceled    = errors.New("rules: canceled rule cannot be reactivated")
	ErrInvalidSchedule = errors.New("rules: invalid schedule")
	ErrInvalidStatus   = errors.New("rules: invalid status")
	ErrInvalidRolePair = errors.New("rules: rule requires one student and one tutor")
	ErrUserNotFound    = errors.New("rules: user not found")
	ErrInternal        = errors.New("rules: internal error")
)
