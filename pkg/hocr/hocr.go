// Package hocr reads recognized text out of hOCR files, the HTML-based output
// format of tesseract, ocropus, kraken and other OCR engines.
//
// Only the parts needed to recover text in reading order are modeled:
// Document → Pages → Lines → Words. Paragraph and content-area containers are
// flattened, since lines keep their document order inside them.
//
// Key Types:
//
// - Document: the parsed file
// - Page: an element with class 'ocr_page'
// - Line: an element with class 'ocr_line', 'ocr_textfloat', 'ocr_header' or 'ocr_caption'
// - Word: an element with class 'ocrx_word'
//
// Main Functions:
//
// - Parse: parses hOCR data into a Document
// - (*Document).Lines: the recognized text, one string per line
// - (*Document).ConfidentLines: the same, leaving out words scored below a threshold
package hocr
