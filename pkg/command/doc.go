/*
Package command defines the closed set of clic commands and how raw input becomes one.

# Key Components

  - Command: Help, SetConstant, ListConstants, SetColor or Expression.
  - Parse: maps a token list to a Command, validating arguments.
  - Tokenize: splits a shell line, keeping expressions whole.
  - SanitizeLine: bounds and cleans a shell line before it is tokenized.

# Usage

	tokens := command.Tokenize("set x 4") // ["set", "x", "4"]
	cmd, err := command.Parse(tokens)     // SetConstant{Name: "x", Value: 4}
*/
package command
