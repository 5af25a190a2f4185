// Package gemini implements [ai.Provider] for Google's Gemini generateContent
// API. The main entry point is [New], which reads GEMINI_API_KEY and
// GEMINI_API_BASE_URL from the environment.
package gemini
