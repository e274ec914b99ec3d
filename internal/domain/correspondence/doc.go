// Package correspondence contains the Correspondence bounded context.
// This context is responsible for minting document numbers for outgoing
// letters, archiving letter records, and answering the public verification
// lookups that confirm a number was really issued.
package correspondence
