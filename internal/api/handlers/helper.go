package handlers

import (
	"io"
	"mime/multipart"
)

func readAllAndClose(file multipart.File) ([]byte, error) {
	defer file.Close()

	return io.ReadAll(file)
}
