package translate

// pyHeader is the static import preamble emitted ahead of any translated
// output. The generated code's library surface (tables, sequences,
// regexes, dates) does not vary with input analysis, so the header is
// fixed content.
const pyHeader = `import pandas as pd
import numpy as np
import os
import re
from datetime import datetime, timedelta
`
