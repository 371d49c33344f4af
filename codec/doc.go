// Package codec converts data contract documents to the entity model and
// back.
//
// Import parses the text, lets the configured transformation engine map it
// onto the canonical contract shape when one is available and compatible,
// and otherwise falls back to the heuristic mapper that understands the
// historical document shapes. Either way the same normalization core builds
// the model, so both paths yield equal models for the same document.
//
// Export is the inverse. It validates the model first and fails with a
// *SerializationError naming the entity that cannot be represented.
//
// Warnings never fail a call: they are returned as Diagnostics and logged
// through the injected zap logger.
package codec
