package service

// Requester 呼叫端(gateway)驗證完的使用者身份
// 本核心不管JWT/session，只拿id與年齡
type Requester struct {
	UserID uint
	Age    int
}
