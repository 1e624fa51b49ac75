package command

import "strconv"

func parseInt(b []byte) (int, error) {
	n, err := strconv.Atoi(string(b))
	return n, err
}
