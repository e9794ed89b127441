package repositories

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	"github.com/doug-martin/goqu/v9/exp"
)

// mysqlDialect renders prepared statements with `?` placeholders.
var mysqlDialect = goqu.Dialect("mysql")

// likeAny matches term anywhere in any of cols, ignoring case.
func likeAny(term string, cols ...string) exp.ExpressionList {
	pattern := "%" + term + "%"
	ors := make([]exp.Expression, 0, len(cols))
	for _, c := range cols {
		ors = append(ors, goqu.I(c).ILike(pattern))
	}
	return goqu.Or(ors...)
}
