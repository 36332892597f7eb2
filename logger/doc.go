// Package logger wraps zerolog with the field names xesmeta logs under.
//
// A process calls Init once with its logging section; libraries take a
// *Logger through an option and fall back to Nop when none is given.
//
//	logging:
//	  level: "debug"
//	  format: "console"
//
// Step code scopes its logger by component and attaches step identity
// with Fields:
//
//	log := logger.GetGlobalLogger().WithComponent("xesstep")
//	log.Debug("step saved", logger.Fields(logger.FieldStepID, id))
package logger
