package outline

// LLM prompt templates for page verification.

// VerifySegmentPrompt asks the model to locate the true physical page of each
// title in a windowed slice of document content. Placeholders: the title
// list, the TOC-region page bound, and the page-tagged content window.
const VerifySegmentPrompt = `You are an expert in analyzing document structure. You are given a list of section titles from a table of contents, and the text of a contiguous range of document pages. Each page in the content is tagged with a marker line like "=== Page 12 ===" giving its physical page number.

For each title, find the page where the section actually BEGINS — the heading occurrence that is followed by the section's body content.

Rules:
- Ignore occurrences inside table-of-contents listings. The first %d pages of the document are typically TOC territory; a bare title followed by a page number or dot leaders is a listing, not a section start.
- Prefer a heading followed by body text over a bare mention of the title.
- The title may differ slightly in spacing or punctuation from its occurrence.
- If a title cannot be located in the provided pages, use null for its page.
- Assign a confidence per title: "high" when the heading clearly starts the section, "medium" when the match is plausible but ambiguous, "low" when it is a guess.

Titles to locate:
%s

Page content:
%s

Respond in JSON format with exactly one mapping per title, in the same order:
{
  "mappings": [
    {"title": "...", "physical_index": 12, "confidence": "high"},
    {"title": "...", "physical_index": null, "confidence": "low"},
    ...
  ]
}`
