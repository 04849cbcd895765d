// Package logging is the leveled logging facade used across the service.
// The level comes from LOG_LEVEL (debug, info, warn, error) with DEBUG=1
// as a shortcut for debug; it can be changed at runtime with SetLevel.
// Output goes through the standard log package, one line per message.
package logging
