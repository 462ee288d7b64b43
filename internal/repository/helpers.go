package repository

import (
	"fmt"
	"strings"
)

// placeholders строит список позиционных параметров "$start, $start+1, ..."
// для IN-выражений с переменным числом аргументов.
func placeholders(start, count int) string {
	parts := make([]string, count)
	for i := 0; i < count; i++ {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}
