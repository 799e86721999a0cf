package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrInvalidToken       = newSemanticError("a token kind needs a non-empty name")
	semErrDuplicateTokenID   = newSemanticError("duplicate token kind id")
	semErrDuplicateTokenName = newSemanticError("duplicate token kind name")
	semErrDuplicateClass     = newSemanticError("duplicate rule class name")
	semErrUnknownReference   = newSemanticError("unknown reference")
	semErrEmptyInterface     = newSemanticError("an interface needs at least one eligible implementor")
	semErrAmbiguousBinding   = newSemanticError("ambiguous field binding")
	semErrUnresolvableCycle  = newSemanticError("unresolvable dependency cycle")
	semErrMissingRoot        = newSemanticError("no rule class is designated as the grammar root")
	semErrMultipleRoots      = newSemanticError("multiple rule classes are designated as the grammar root")
	semErrEmptyPattern       = newSemanticError("a rule pattern must not be empty")
	semErrInvalidEligibility = newSemanticError("invalid eligibility setting")
	semErrMissingLexPattern  = newSemanticError("a token kind lacks a lexical pattern")
)
