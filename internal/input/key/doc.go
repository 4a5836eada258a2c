// Package key defines device-native keyboard codes.
//
// Key values are independent of any windowing or terminal library; the host
// adapters translate their own key codes into Key before building input
// events. Human-readable component ids ("A", "LEFT", "F1") are assigned by the
// keycode package.
package key
