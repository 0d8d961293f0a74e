package graphql

import (
	"strconv"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// dateToMillis serializes a timestamp to epoch milliseconds
func dateToMillis(value interface{}) interface{} {
	switch v := value.(type) {
	case time.Time:
		return v.UnixMilli()
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.UnixMilli()
	}
	return nil
}

// millisToDate parses a client-supplied value into a timestamp
func millisToDate(value interface{}) interface{} {
	switch v := value.(type) {
	case int:
		return time.UnixMilli(int64(v))
	case int64:
		return time.UnixMilli(v)
	case float64:
		return time.UnixMilli(int64(v))
	case string:
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil
		}
		return time.UnixMilli(ms)
	}
	return nil
}

// DateScalar serializes to epoch milliseconds and parses integer literals or
// client values back into timestamps.
var DateScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Date",
	Description: "Date custom scalar type, transported as epoch milliseconds",
	Serialize:   dateToMillis,
	ParseValue:  millisToDate,
	ParseLiteral: func(valueAST ast.Value) interface{} {
		if iv, ok := valueAST.(*ast.IntValue); ok {
			ms, err := strconv.ParseInt(iv.Value, 10, 64)
			if err != nil {
				return nil
			}
			return time.UnixMilli(ms)
		}
		return nil
	},
})
