package mappers

import "errors"

var (
	errMismatchedChrRAM = errors.New("mappers: CHR RAM size mismatch on deserialize")
	errMismatchedPrgRAM = errors.New("mappers: PRG RAM size mismatch on deserialize")
	errShortMapperBlob  = errors.New("mappers: truncated mapper state blob")
)
