package mcpserver

// CodeFormatContract describes how Raido short codes are derived and how
// raw input is canonicalized before lookup. Exposed as an MCP resource so
// LLM consumers format codes correctly.
const CodeFormatContract = `# Raido Code Format Contract

Every tracked file has a 5-character short code of the form ` + "`XX-XX`" + `.

## Derivation

1. SHA-256 of the UTF-8 file path.
2. First three digest bytes packed big-endian into a 24-bit integer.
3. Reduced modulo 32^4 (1,048,576) onto the code space.
4. Rendered in base 32, zero-padded to 4 symbols, through the canonical
   alphabet below.
5. A ` + "`-`" + ` separator is inserted after the 2nd symbol.

The code depends only on the path, never on file content, so it is stable
across sessions and hosts. Renaming a file changes its code.

## Canonical alphabet

` + "```" + `
0123456789ABCDEFGHJKMNPQRSTVWXYZ
` + "```" + `

32 symbols: digits 0-9 plus uppercase letters excluding O, I, L and U,
which are too easy to misread.

## Input normalization

Raw input is canonicalized before any lookup:

- Uppercased.
- Look-alike substitutions: ` + "`O→0`" + `, ` + "`I→1`" + `, ` + "`L→1`" + `, ` + "`U→V`" + `.
- Characters outside the alphabet (separators, whitespace, punctuation)
  are dropped.
- Truncated to 4 symbols; the separator is re-inserted after the 2nd.

So ` + "`ab-cd`" + `, ` + "`ABCD`" + ` and ` + "` a b c d `" + ` all mean ` + "`AB-CD`" + `.

## Collisions

Codes are not unique: two paths may share a code, and the most recently
tracked path wins the code lookup. This is a deliberate tradeoff for
human-typeable brevity (~20 bits of code space). Use search_codes to see
what a prefix currently matches.

## URI scheme

` + "`raido://codes/open?code=XX-XX`" + ` asks the host to open the file for a
code. Not-found and missing-file conditions are reported to the user and
never mutate the index.
`
