package s3

import (
	"fmt"
	"io"
)

var ErrReachLimitType *ReachLimitError

type ReachLimitError struct {
	MaxBytes int64
}

func (e *ReachLimitError) Error() string {
	return fmt.Sprintf("reach limit of %s", FormatBytes(e.MaxBytes))
}

// NewMaxSizeReader 建立一個限制讀取總長度的 reader，
// 讀取的長度超過 maxSize 時回傳 ReachLimitError
func NewMaxSizeReader(r io.Reader, maxSize int64) io.Reader {
	return &maxSizeReader{r, maxSize, maxSize}
}

type maxSizeReader struct {
	reader io.Reader
	i      int64 // 限制的總長度
	n      int64 // 還可以讀取的長度
}

func (r *maxSizeReader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	// 最多只需要讀到剩餘額度加 1 的長度，
	// 就能判斷來源是否超過限制
	if int64(len(p)) > r.n+1 {
		p = p[:r.n+1]
	}
	n, err = r.reader.Read(p)

	// 沒有超過剩餘額度，直接回傳
	if int64(n) <= r.n {
		r.n -= int64(n)
		return n, err
	}

	// 超過限制，截斷到額度內並回報錯誤
	n = int(r.n)
	r.n = 0
	return n, &ReachLimitError{r.i}
}
