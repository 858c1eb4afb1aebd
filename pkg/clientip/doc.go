// Package clientip resolves the caller address of an HTTP request for rate
// limiting and logging.
//
// Proxy headers are trusted only when configured:
//
//	res := clientip.New(clientip.HeaderCFConnectingIP, clientip.HeaderXForwardedFor)
//	r.Use(res.Middleware)
//
// Without trusted headers the address comes from RemoteAddr alone.
package clientip
