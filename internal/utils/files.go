package utils

import (
	"io"

	"github.com/wangyifan349/resolvboot/internal/log"
)

func CloseOrWarn(file io.Closer) {
	if err := file.Close(); err != nil {
		log.Warnf("Failed to close file: %v", err)
	}
}
