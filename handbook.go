// Package handbook answers natural language questions against a structured
// handbook. Candidate sections come from an external ranking oracle, are
// expanded by following in-text cross-references, and are assembled into a
// bounded context for an answering oracle.
//
// This package contains domain types, interfaces and the pure core
// algorithms, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, gemini/, openai/).
package handbook
