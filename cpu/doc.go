// Package cpu implements the processor and assembler for the m6502 system.
//
// The CPU consists of a 16-bit program counter (Pc), a 16-bit stack
// pointer (Sp), three 8-bit registers (A, X, Y) and eight status flags.
// It executes a small subset of the 6502 instruction set (LDA in four
// addressing modes, and JSR) against a Memory, charging a cycle budget for
// every byte fetched or stored.
//
// The assembler accepts a 6502-flavoured assembly language with labels,
// equates, macros, and compile-time expression evaluation.
package cpu
