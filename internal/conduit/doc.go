// Package conduit creates the named FIFO joining the decode and encode
// stages. The FIFO is a kernel-buffered byte stream: the decode stage blocks
// writing when the encoder falls behind, and the encoder blocks reading until
// data arrives or the writer closes. Removal is the resource tracker's job;
// no teardown beyond unlinking the path is required.
package conduit
