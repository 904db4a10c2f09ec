/*
Package domain holds the vocabulary shared by every clic package.

It is kept free of I/O: only sentinel errors, record keys and file names live
here, so that stores, the dispatcher and the shell agree on them without
importing each other.
*/
package domain
