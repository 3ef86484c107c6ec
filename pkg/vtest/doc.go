// Package vtest provides testing helpers for sticky elements.
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, el.Render(), "sticky-element--sticky-top")
//	vtest.ExpectAttribute(t, el.Render(), "data-sticky-state", "normal")
//
// # Session Client
//
// Client speaks the browser hook's protocol to a running server:
//
//	ts := httptest.NewServer(srv)
//	c := vtest.Dial(t, ts.URL)
//	c.Hello([]string{"sticky"}, 800)
//	c.Register("top", 50, 1)
//	c.Exit("top", -5, 1)
//	m := c.ReadUntil(func(m vtest.Message) bool { return m.State == "sticky-top" })
package vtest
