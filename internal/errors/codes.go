package errors

// Error codes for the SMPL compiler
// These codes are used in error messages and documentation
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: Name resolution errors
// E0100-E0199: Parser errors
// E0900-E0999: Internal compiler errors
// W0001-W0099: Warnings

const (
	// E0001: Identifier used or assigned without a `var` declaration
	ErrorUndefinedVariable = "E0001"

	// E0009: Variable declared twice
	ErrorDuplicateDeclaration = "E0009"

	// E0013: Built-in called with the wrong number of arguments
	ErrorInvalidArguments = "E0013"

	// E0100: Source does not match the grammar
	ErrorSyntax = "E0100"

	// E0900: Graph construction protocol violated
	ErrorInternal = "E0900"

	// W0002: Statements after return
	WarningUnreachableCode = "W0002"

	// W0003: Variable read before any assignment reaches it
	WarningUseBeforeDefinition = "W0003"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUndefinedVariable:
		return "Variable is used but not declared"
	case ErrorDuplicateDeclaration:
		return "Duplicate declaration found"
	case ErrorInvalidArguments:
		return "Function call has invalid arguments"
	case ErrorSyntax:
		return "Syntax error"
	case ErrorInternal:
		return "Internal compiler error"
	case WarningUnreachableCode:
		return "Code is unreachable"
	case WarningUseBeforeDefinition:
		return "Variable is read before it is assigned on some path"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return len(code) > 0 && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case IsWarning(code):
		return "Warning"
	case code >= "E0001" && code < "E0100":
		return "Name Resolution"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0900" && code < "E1000":
		return "Internal"
	default:
		return "Unknown"
	}
}
