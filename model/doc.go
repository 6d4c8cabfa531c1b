// Package model defines core types used throughout reqindex.
//
// # Identity Types
//
//   - ID: Externally assigned, non-negative record identifier (uint32)
//
// # Data Types
//
//   - Record: A service request snapshot (category, location, priority, status, timestamps)
//   - Edge: A weighted, labelled relationship between two records
//   - Stats: Aggregate counts over a snapshot plus per-index node counts
//
// # Enumerations
//
// Priority, Category and Status are small integer enums. Each has a String method
// and a Parse function, and each marshals as its name in JSON and YAML:
//
//	p, _ := model.ParsePriority("critical")
//	fmt.Println(p > model.PriorityHigh) // true
package model
