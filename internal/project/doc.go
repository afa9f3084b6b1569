// Package project locates the project root and reads project-level settings.
//
// The root is resolved in strict precedence order:
//  1. SWEEP_PROJECT_ROOT, when it names an existing directory
//  2. upward marker search from the working directory (.sweep directory
//     or a .sweep.yaml file)
//  3. the working directory itself
//
// Resolution never fails; step 3 is a designed fallback, not an error.
// All filesystem probes go through the FS interface so the walk can be
// unit-tested against an in-memory tree.
package project
